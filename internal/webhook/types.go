package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification
	SignatureHeader string   // Header carrying "sha256=<hex>" (e.g. X-Hub-Signature-256)
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute
}
