package credstore

import "crypto/rand"

// randRead is an indirection over crypto/rand used to exercise failure
// paths in tests.
var randRead = rand.Read
