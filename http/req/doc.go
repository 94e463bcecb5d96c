/*
Package req parses payloads out of an HTTP request.

It supports JSON-encoded bodies, url-encoded forms and query parameters.
In every case, req parses into a pointer to a struct whose tags do two jobs:
"json" or "schema" tags match keys in the payload to fields,
and "validate" tags state what the data must look like.

Whatever goes wrong is translated to stocksage sentinel errors,
so handlers see the same errors regardless of how the payload was encoded.
*/
package req
