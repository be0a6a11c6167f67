package marionette

// Test is one registered, runnable test. Tests are created through
// [Engine.RegisterTest] or [Engine.RegisterScript] and run by queueing them
// with [Engine.QueueTests]; the engine executes at most one at a time,
// spread across frames.
type Test struct {
	Category string
	Name     string
	Group    TestGroup
	Status   TestStatus

	fn      func(*Context)
	script  *Script
	failMsg string
}

// Key returns the test's "category/name" identifier.
func (t *Test) Key() string {
	return t.Category + "/" + t.Name
}

// LastFailure returns the failure message of the most recent failed run,
// or "" if the test has not failed.
func (t *Test) LastFailure() string {
	return t.failMsg
}
