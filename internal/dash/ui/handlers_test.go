package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/internal/dash/store/drivers/sqlite"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
	store  store.Store
	roles  *service.RolesService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	secret := []byte(strings.Repeat("k", jwtx.MinSecretLength))
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	users := &service.UserService{Store: st, Signer: signer, Issuer: "dash"}
	roles := &service.RolesService{Store: st}
	bootstrap := &service.BootstrapService{Store: st, Users: users}
	_, err = bootstrap.Bootstrap(ctx, service.BootstrapData{AdminUsername: "admin", AdminPassword: "correct-horse"})
	require.NoError(t, err)

	h := &Handler{
		Users:       users,
		Roles:       roles,
		View:        &service.HierarchyViewService{Store: st, Roles: roles},
		Activity:    &service.ActivityService{Store: st},
		Preferences: &service.PreferencesService{Store: st},
		Verifier:    jwtx.NewVerifierHS256(secret, "dash"),
	}
	mux := http.NewServeMux()
	MountRoutes(mux, h)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{server: srv, client: &http.Client{Jar: jar}, store: st, roles: roles}
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", e.csrfToken(t))
	resp, err := e.client.PostForm(e.server.URL+path, form)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (e *testEnv) csrfToken(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(e.server.URL + "/ui/login")
	require.NoError(t, err)
	for _, c := range e.client.Jar.Cookies(u) {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	t.Fatal("no csrf cookie")
	return ""
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	status, _ := e.get(t, "/ui/login")
	require.Equal(t, http.StatusOK, status)

	status, body := e.post(t, "/ui/login", url.Values{"username": {"admin"}, "password": {"correct-horse"}})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Super Admin")
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestHandler_RedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/ui/roles")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `name="next" value="/ui/roles"`)
}

func TestHandler_LoginFailure(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/ui/login")

	status, body := env.post(t, "/ui/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Contains(t, body, "Invalid username or password.")
}

func TestHandler_RejectsMissingCSRF(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/ui/login")

	resp, err := env.client.PostForm(env.server.URL+"/ui/login", url.Values{"username": {"admin"}, "password": {"correct-horse"}})
	require.NoError(t, err)
	status, _ := readBody(t, resp)
	require.Equal(t, http.StatusForbidden, status)
}

func TestHandler_ToggleAndZoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.store.Roles().GetRoleByName(ctx, service.AdminRoleName)
	require.NoError(t, err)
	support, err := env.roles.Create(ctx, service.Actor{Username: "admin"}, service.RoleInput{
		Name:     "Support",
		ParentID: domain.RoleID(admin.ID),
	})
	require.NoError(t, err)
	supportNode := `id="role-` + strconv.FormatInt(support.ID, 10) + `"`

	env.login(t)

	_, body := env.get(t, "/ui/roles")
	require.Contains(t, body, supportNode)

	status, body := env.post(t, "/ui/roles/"+strconv.FormatInt(admin.ID, 10)+"/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, supportNode)

	status, body = env.post(t, "/ui/roles/expand", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, supportNode)

	status, body = env.post(t, "/ui/roles/zoom", url.Values{"action": {"out"}})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "transform: scale(0.9)")

	status, _ = env.post(t, "/ui/roles/zoom", url.Values{"action": {"sideways"}})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_RoleDetail(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	admin, err := env.store.Roles().GetRoleByName(context.Background(), service.AdminRoleName)
	require.NoError(t, err)

	status, body := env.get(t, "/ui/roles/"+strconv.FormatInt(admin.ID, 10))
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Permissions")
	require.Contains(t, body, "4 of 4")

	status, _ = env.get(t, "/ui/roles/9999")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = env.get(t, "/ui/roles/abc")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_ActivityAndSettings(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	status, body := env.get(t, "/ui/activity?action=login")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Signed in")

	status, body = env.post(t, "/ui/settings", url.Values{"theme": {"dark"}, "brand_color": {"#112233"}})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `data-color-mode="dark"`)
	require.Contains(t, body, "--brand: #112233;")

	status, _ = env.post(t, "/ui/settings", url.Values{"theme": {"neon"}, "brand_color": {"#112233"}})
	require.Equal(t, http.StatusBadRequest, status)

	status, body = env.post(t, "/ui/favorites/toggle", url.Values{"page": {"activity"}, "next": {"/ui/settings"}})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "★ Activity")

	status, _ = env.post(t, "/ui/favorites/toggle", url.Values{"page": {"nope"}})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	status, body := env.post(t, "/ui/logout", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Sign in to manage roles")

	_, body = env.get(t, "/ui/roles")
	require.Contains(t, body, `name="next" value="/ui/roles"`)
}

func TestSafeNext(t *testing.T) {
	require.Equal(t, "/ui/activity", safeNext("/ui/activity", homePath))
	require.Equal(t, homePath, safeNext("https://evil.example", homePath))
	require.Equal(t, homePath, safeNext("//evil.example", homePath))
	require.Equal(t, homePath, safeNext("", homePath))
}

func TestServerError_NegotiatesJSON(t *testing.T) {
	fail := errors.New("store unavailable")

	t.Run("browser gets the error page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		serverError(rec, httptest.NewRequest(http.MethodGet, "/ui/roles", nil), "boom", fail)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), "Something went wrong")
	})

	t.Run("fetch with Accept json gets an error body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ui/roles", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		serverError(rec, req, "boom", fail)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.Contains(t, rec.Body.String(), `"error":"server_error"`)
	})
}
