// Package domain holds the payloads exchanged with the StockSage backend
// and the signed in principal rendered by the web client.
//
// Every type carries validate tags checked at the API boundary.
// Percentages are fractions throughout: the backend sends pre-scaled
// percentages which [Percent] divides by 100 when decoding.
package domain
