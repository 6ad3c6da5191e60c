package router

import "strings"

// routeNode is one segment of the route tree. Static children are tried
// first, then the typed parameter child, then the catch-all.
type routeNode struct {
	route    *Route
	static   map[string]*routeNode
	param    *routeNode
	catchAll *routeNode

	// name and kind describe param and catch-all nodes.
	name string
	kind string
}

func (n *routeNode) insert(pattern string) *routeNode {
	cur := n
	for _, seg := range splitPath(pattern) {
		if seg == "" {
			continue
		}
		switch seg[0] {
		case '*':
			if cur.catchAll == nil {
				cur.catchAll = &routeNode{name: seg[1:], kind: "[]string"}
			}
			return cur.catchAll
		case ':':
			name, kind := parseParamSegment(seg)
			if cur.param == nil {
				cur.param = &routeNode{name: name, kind: kind}
			}
			cur = cur.param
		default:
			next, ok := cur.static[seg]
			if !ok {
				if cur.static == nil {
					cur.static = make(map[string]*routeNode)
				}
				next = &routeNode{}
				cur.static[seg] = next
			}
			cur = next
		}
	}
	return cur
}

// match resolves segments below n. A parameter whose value does not fit
// its type is not a candidate, so matching can fall through to a
// catch-all.
func (n *routeNode) match(segments []string, params Params) (*Route, bool) {
	if len(segments) == 0 {
		return n.route, n.route != nil
	}
	head, rest := segments[0], segments[1:]

	if next, ok := n.static[head]; ok {
		if r, ok := next.match(rest, params); ok {
			return r, true
		}
	}
	if p := n.param; p != nil && ValidateParam(head, p.kind) == nil {
		params[p.name] = head
		if r, ok := p.match(rest, params); ok {
			return r, true
		}
		delete(params, p.name)
	}
	if c := n.catchAll; c != nil && c.route != nil {
		params[c.name] = strings.Join(segments, "/")
		return c.route, true
	}
	return nil, false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// parseParamSegment splits ":id:int" into "id" and "int". The type
// defaults to "string".
func parseParamSegment(seg string) (name, kind string) {
	name, kind, ok := strings.Cut(seg[1:], ":")
	if !ok {
		kind = "string"
	}
	return name, kind
}
