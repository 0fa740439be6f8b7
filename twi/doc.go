// Package twi computes I2C (TWI) bus parameters for a selected bus speed mode:
// signal rise time, the pull-up resistor window and the value of the bus baud
// register used by the TWI peripheral of ATtiny 1-series and similar parts.
//
// The Engine holds the form exactly as typed (numeric fields are text so that
// partial input such as "4." or "" is tolerated) and recomputes every derived
// value on each read. Nothing in this package returns an error: invalid input
// surfaces as NaN or as an out-of-range value, and Faults reports which fields
// a presentation layer should mark.
package twi
