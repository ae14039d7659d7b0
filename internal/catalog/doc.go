// Package catalog manages the portfolio of bakery work shown on the
// public site: cakes, cupcakes, and desserts with images, optional
// video, pricing, and view counts.
//
// Items carry an is_active flag; the public API only ever lists active
// items, admins see everything. Images and video live on the external
// media host; this package stores their URLs and object keys only.
package catalog
