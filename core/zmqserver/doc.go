// Package zmqserver exposes a cache store over a ZeroMQ REQ/REP socket.
//
// Every request is one JSON frame and gets one JSON reply frame:
//
//	{"op":"put","key":"a","value":"1"}  ->  {"ok":true}
//	{"op":"get","key":"a"}              ->  {"ok":true,"value":"1"}
//	{"op":"get","key":"zz"}             ->  {"ok":false,"error":{"code":"not_found","message":"..."}}
//	{"op":"snapshot"}                   ->  {"ok":true,"entries":[{"key":"a","value":"1"}]}
//
// Error codes are not_found, invalid_input, bad_request, unknown_op, closed
// and internal.
//
// The server runs in an errgroup next to the HTTP server:
//
//	zs := zmqserver.New("tcp://*:5555", st, zmqserver.WithLogger(log))
//	g.Go(zs.Run(ctx))
//
// Client maps error replies back onto the store sentinel errors, so
// errors.Is(err, store.ErrNotFound) works across the wire.
package zmqserver
