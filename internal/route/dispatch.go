package route

// dispatchVerbs is the closed servlet dispatch convention table.
var dispatchVerbs = map[string]Verb{
	"doGet":     GET,
	"doPost":    POST,
	"doPut":     PUT,
	"doDelete":  DELETE,
	"doPatch":   PATCH,
	"doHead":    HEAD,
	"doOptions": OPTIONS,
}

// DispatchVerb maps a servlet dispatch method name to its verb.
func DispatchVerb(method string) (Verb, bool) {
	v, ok := dispatchVerbs[method]
	return v, ok
}
