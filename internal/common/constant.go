package common

// RequestIDHeaderName is the gRPC metadata key and HTTP header that carries a
// request ID. The server generates one when the caller does not send it.
const RequestIDHeaderName = "x-request-id"
