// Package dashsdk is the Go client for the Dash role administration API.
//
// Sign in with a username and password to get a Session. The session
// carries the bearer token and the scopes of the user's role:
//
//	client := dashsdk.NewSDKClient("http://localhost:8080")
//	session, err := client.Login(ctx, "admin", "secret")
//	if err != nil {
//		return err
//	}
//
//	tree, err := session.RoleTree(ctx)
//	if err != nil {
//		return err
//	}
//	for _, root := range tree.Roots {
//		fmt.Println(root.Role.Name, len(root.Children))
//	}
//
// The request and response types in this package are also what the server
// encodes, so handlers and clients agree on the wire format.
//
// # Errors
//
// Failed calls return an *APIError carrying the HTTP status and the
// server's error code:
//
//	var apiErr *dashsdk.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == dashsdk.ErrorCodeRoleCycle {
//		// the new parent is a descendant of the role
//	}
//
// When CheckScopes is set (the default) a session refuses calls its scopes
// cannot make before touching the network.
package dashsdk
