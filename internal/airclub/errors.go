package airclub

import "github.com/rotisserie/eris"

// ErrUpstream marks any failure talking to the Airline Club API: timeout,
// transport error, or a non-200 status. Callers check it with eris.Is to
// map the failure to a retryable, non-user-fault message.
var ErrUpstream = eris.New("airclub: upstream unavailable")
