// Package portal assembles an authenticated portal API client.
//
// NewClient wires a credential store (memory, scy-encrypted afs location or
// Redis), the refreshing auth RoundTripper, the typed REST client and the
// session layer from one ClientOptions value. Options can be populated from
// CLI flags, a YAML file (LoadOptions) or PORTAL_* environment variables.
//
// Example:
//
//	options, _ := portal.LoadOptions(ctx, "~/.portal/config.yaml")
//	p, _ := portal.NewClient(options)
//	defer p.Close()
//	_, _ = p.Session.Login(ctx, "client@example.com", "secret", "")
//	profile, _ := p.Client.Profile(ctx)
package portal
