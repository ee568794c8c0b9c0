// package services talks to the upstream maintenance API: the
// client-credentials token lifecycle and the work-order fetch endpoints.
package services
