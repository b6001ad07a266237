package locator

import "runtime"

// Candidates returns the well-known PPSSPP install locations for goos,
// in probe order.
func Candidates(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\PPSSPP\PPSSPPWindows64.exe`,
			`C:\Program Files (x86)\PPSSPP\PPSSPPWindows.exe`,
		}
	case "darwin":
		// SDL build first; the non-SDL app bundle is the fallback.
		return []string{
			"/Applications/PPSSPPSDL.app/Contents/MacOS/PPSSPPSDL",
			"/Applications/PPSSPP.app/Contents/MacOS/PPSSPP",
		}
	default:
		return []string{
			"/usr/bin/ppsspp",
			"/usr/local/bin/ppsspp",
			"/usr/bin/PPSSPPSDL",
			"/usr/local/bin/PPSSPPSDL",
		}
	}
}

// DefaultCandidates returns the candidate list for the running platform.
func DefaultCandidates() []string {
	return Candidates(runtime.GOOS)
}
