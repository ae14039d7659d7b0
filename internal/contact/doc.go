// Package contact manages enquiries submitted through the public
// contact form. Messages move through a simple workflow
// (new → read → replied → archived) driven by admin actions; opening
// a new message marks it read automatically.
package contact
