// Package stats computes the admin dashboard aggregates: overview
// counts, most-viewed work, recent enquiries, category and rating
// distributions, and the six month enquiry trend. Everything is
// computed in SQL on demand; nothing is cached or materialised.
package stats
