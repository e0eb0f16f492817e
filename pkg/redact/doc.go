// Package redact masks credentials in free-text log messages.
//
// A Redactor holds an ordered list of rules. Each rule is a regular expression
// with one capture group to mask; the rest of the match is kept so that
// "token=abc" becomes "token=******" and "Authorization: Bearer xyz" keeps its
// scheme. When masked groups of different rules overlap, they are merged into
// one placeholder.
//
// Baseline rules (DefaultRules) cover query tokens, Authorization, Cookie and
// Set-Cookie headers and JSON-ish "token"/"cookie" fields. Deployments can
// append their own with a YAML file:
//
//	r, err := redact.FromFile(os.Getenv("LOG_REDACT_RULES_FILE"))
//	if err != nil {
//	    return err
//	}
//	line := r.Mask(msg)
package redact
