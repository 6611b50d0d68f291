// Package pricing computes cover note quotes.
//
// A quote is a base price looked up from a RateSchedule by duration, reduced by an
// absolute age discount and then by a percentage license discount taken from the price
// left after the age discount. Everything here is a pure function of a Config snapshot
// and a Request: nothing is cached, mutated or logged, so a Config can be shared by any
// number of concurrent callers.
package pricing
