// Package testimonial manages customer reviews. Submissions start
// unapproved and only appear on the public site once an admin approves
// them; featured testimonials sort ahead of the rest.
package testimonial
