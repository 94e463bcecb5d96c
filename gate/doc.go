/*
Package gate decides whether protected content may be shown for a Session.

A [Controller] listens to a [Source] of Sessions and moves through four States:

	Unknown   nothing settled yet; show a loading indicator
	Settling  a signed in Session is being checked against the Condition; keep loading
	Denied    nobody is signed in, or the Condition said no or failed; show the Fallback
	Granted   the Condition said yes; show the protected content

Every settled Session starts a new evaluation generation.
Only the latest generation may move the Controller out of Settling,
so a slow evaluation for an earlier Session never overwrites a later decision.

A Controller without a Source, or whose Source never settles within the timeout,
fails open to Denied.
*/
package gate
