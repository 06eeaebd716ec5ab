// Package pushwatch provides in-process access to the commit guard for
// Go agent frameworks. It scans text or a repository's staged changes
// against the secret rule table and runs the commit-and-push pipeline
// without spawning the CLI.
//
// Usage:
//
//	pw, err := pushwatch.New(pushwatch.WithConfigPath("/etc/pushwatch.yaml"))
//	verdict, err := pw.ScanStaged(ctx, "/work/repo")
//	if verdict.Blocked {
//	    // refuse to proceed; verdict.Matches carries truncated evidence
//	}
//	results := pw.Sync(ctx)
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ppiankov/pushwatch/sdk/go/pushwatch.
package pushwatch
