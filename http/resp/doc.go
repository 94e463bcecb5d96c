/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides three main ways of responding to an HTTP request:
- rendering HTML templates
- rendering JSON data
- redirecting

Failures calling the backend on behalf of a signed out or expired Session
are recognized by IsAuthErr and answered by redirecting ToLogin.
*/
package resp
