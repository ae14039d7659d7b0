// Package notify sends email notifications for contact form
// submissions: an alert to the bakery admin and a confirmation to the
// customer. Sending is always best-effort: a mail failure never fails
// the request that triggered it.
package notify
