package domain

// CanStartSession is the whole paywall gate: pro users always pass, everyone
// else is limited to freeQuota completed sessions. A negative quota disables
// the limit.
func CanStartSession(completedSessions int, isPro bool, freeQuota int) bool {
	if isPro || freeQuota < 0 {
		return true
	}
	return completedSessions < freeQuota
}
