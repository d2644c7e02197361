package usercontext

// KeyUserContext is the fiber Locals key the auth middleware stores the
// resolved UserContext under.
const KeyUserContext = "USER_CONTEXT"
