package archiver

// 7-Zip exit codes, per the p7zip documentation.
const (
	exitOK      = 0
	exitWarning = 1 // non-fatal, e.g. files locked while scanning
	exitFatal   = 2
	exitUsage   = 7
	exitMemory  = 8
	exitAborted = 255
)

// exitCodeMessage describes a 7-Zip exit code for error reporting.
func exitCodeMessage(code int) string {
	switch code {
	case exitOK:
		return "ok"
	case exitWarning:
		return "warning (non-fatal)"
	case exitFatal:
		return "fatal error"
	case exitUsage:
		return "command line error"
	case exitMemory:
		return "not enough memory"
	case exitAborted:
		return "aborted by user"
	default:
		return "unknown error"
	}
}
