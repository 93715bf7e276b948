package validator

// seedDisposableDomains is the built-in throwaway-mail domain list. Deployments
// extend it via verification.disposable_domains in config; the seed covers the
// providers that show up constantly in signup abuse.
var seedDisposableDomains = []string{
	"10minutemail.com",
	"dispostable.com",
	"fakeinbox.com",
	"getnada.com",
	"guerrillamail.com",
	"guerrillamail.net",
	"mailinator.com",
	"maildrop.cc",
	"mintemail.com",
	"sharklasers.com",
	"spamgourmet.com",
	"tempmail.com",
	"temp-mail.org",
	"throwawaymail.com",
	"trashmail.com",
	"yopmail.com",
}
