// Package trimlight is a client for the Trimlight cloud API.
//
// All endpoints answer with the envelope {code, desc, payload}; a non-zero code is
// returned as *errs.Error carrying the remote code and description. Operations that
// read before they write (effect update and view, schedule modification, conflict
// check) issue one details request and work on that snapshot.
package trimlight
