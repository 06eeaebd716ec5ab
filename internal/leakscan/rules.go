package leakscan

import "regexp"

// FilenameRule blocks a staged path by shape regardless of content.
// Pattern is matched with path.Match against the basename; patterns
// containing a slash are matched as path suffixes instead.
type FilenameRule struct {
	ID      string
	Pattern string
}

// ContentRule blocks an added diff line matching a known secret shape.
type ContentRule struct {
	ID string
	Re *regexp.Regexp
}

// DefaultFilenameRules is the built-in table of dangerous file names:
// private key material, env files, credential stores, and browser
// session/state databases. Any match blocks the commit.
var DefaultFilenameRules = []FilenameRule{
	{ID: "file.private-key-pem", Pattern: "*.pem"},
	{ID: "file.private-key-key", Pattern: "*.key"},
	{ID: "file.private-key-p12", Pattern: "*.p12"},
	{ID: "file.private-key-pfx", Pattern: "*.pfx"},
	{ID: "file.private-key-ppk", Pattern: "*.ppk"},
	{ID: "file.keystore", Pattern: "*.jks"},
	{ID: "file.ssh-id-rsa", Pattern: "id_rsa*"},
	{ID: "file.ssh-id-ed25519", Pattern: "id_ed25519*"},
	{ID: "file.ssh-id-ecdsa", Pattern: "id_ecdsa*"},
	{ID: "file.dotenv", Pattern: ".env"},
	{ID: "file.dotenv-variant", Pattern: ".env.*"},
	{ID: "file.credentials-json", Pattern: "credentials.json"},
	{ID: "file.aws-credentials", Pattern: ".aws/credentials"},
	{ID: "file.netrc", Pattern: ".netrc"},
	{ID: "file.npmrc", Pattern: ".npmrc"},
	{ID: "file.pypirc", Pattern: ".pypirc"},
	{ID: "file.kdbx", Pattern: "*.kdbx"},
	{ID: "file.browser-cookies", Pattern: "Cookies"},
	{ID: "file.browser-login-data", Pattern: "Login Data"},
	{ID: "file.browser-local-state", Pattern: "Local State"},
	{ID: "file.browser-web-data", Pattern: "Web Data"},
}

// DefaultContentRules is the built-in table of secret shapes checked
// against added diff lines only. Vendor prefixes detect actual
// credential values; the generic field heuristics carry minimum-length
// thresholds to cut false positives, but every match is still a hard
// block (conservative by default).
var DefaultContentRules = []ContentRule{
	// Anthropic keys: sk-ant-... (before the generic sk- rule so the
	// reported rule id names the vendor).
	{ID: "content.anthropic-key", Re: regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]{20,}`)},
	// OpenAI-style keys: sk-...
	{ID: "content.openai-key", Re: regexp.MustCompile(`sk-[a-zA-Z0-9_\-]{20,}`)},
	// Groq keys: gsk_...
	{ID: "content.groq-key", Re: regexp.MustCompile(`gsk_[a-zA-Z0-9]{20,}`)},
	// GitHub tokens: ghp_/gho_/ghu_/ghs_/ghr_ and fine-grained PATs.
	{ID: "content.github-token", Re: regexp.MustCompile(`gh[poursa]_[A-Za-z0-9]{36,}`)},
	{ID: "content.github-pat", Re: regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,}`)},
	// GitLab PATs: glpat-...
	{ID: "content.gitlab-pat", Re: regexp.MustCompile(`glpat-[A-Za-z0-9\-_]{20,}`)},
	// AWS access key IDs.
	{ID: "content.aws-access-key", Re: regexp.MustCompile(`\b(?:AKIA|ASIA)[A-Z0-9]{16}\b`)},
	// AWS secret keys near an aws-ish identifier.
	{ID: "content.aws-secret-key", Re: regexp.MustCompile(`(?i)aws[a-z_]*.{0,20}['"][A-Za-z0-9/+=]{40}['"]`)},
	// Slack tokens: xoxb-/xoxp-/xoxa-/xoxr-/xoxs-.
	{ID: "content.slack-token", Re: regexp.MustCompile(`xox[baprs]-[A-Za-z0-9\-]{10,}`)},
	// Google API keys.
	{ID: "content.google-api-key", Re: regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)},
	// PEM private key material pasted inline.
	{ID: "content.private-key-block", Re: regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY`)},
	// JWTs: three dot-joined base64url segments, header always "eyJ".
	{ID: "content.jwt", Re: regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}`)},
	// Bearer tokens in headers or curl lines.
	{ID: "content.bearer-token", Re: regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-_.]{20,}`)},
	// Browser auth cookie fields: sessionKey=..., session_token: ...
	{ID: "content.session-cookie", Re: regexp.MustCompile(`(?i)(?:sessionkey|session_token|sessionid|auth_token|__secure-[a-z0-9_\-]+)\s*[=:]\s*\S{16,}`)},
	// Generic JSON secret fields with a 16+ char value.
	{ID: "content.json-secret-field", Re: regexp.MustCompile(`(?i)"(?:secret|token|api_key|apikey|access_token|private_key)"\s*:\s*"[^"]{16,}"`)},
	// Generic assignments: password=..., secret=..., with length floors.
	{ID: "content.password-assignment", Re: regexp.MustCompile(`(?i)\b(?:password|passwd)\s*=\s*[^\s'"]{12,}`)},
	{ID: "content.secret-assignment", Re: regexp.MustCompile(`(?i)\b(?:secret|token|api_key|apikey)\s*=\s*['"]?[A-Za-z0-9_\-/+=]{20,}`)},
}

// DefaultExcludedPaths are never scanned: the rule table itself and the
// designated docs would otherwise trip on their own literal pattern text.
var DefaultExcludedPaths = []string{
	"internal/leakscan/rules.go",
	"internal/leakscan/scanner.go",
	"docs/RULES.md",
	"SECURITY.md",
}
