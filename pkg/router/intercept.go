package router

import (
	"strings"

	"github.com/vango-dev/sprig/pkg/dom"
)

// ShouldIntercept reports whether a click on a link should become a
// client-side navigation, and where to. All of the following must hold:
// primary button, no modifier key, href resolving to a valid URL on cur's
// origin, no download attribute, a default target, and an event that is
// cancelable and not already default-prevented.
func ShouldIntercept(ev *dom.Event, href, target string, download bool, cur dom.Location) (dom.Location, bool) {
	if ev == nil || ev.Button != 0 || ev.HasModifier() {
		return dom.Location{}, false
	}
	if !ev.Cancelable || ev.DefaultPrevented() {
		return dom.Location{}, false
	}
	if download {
		return dom.Location{}, false
	}
	if target != "" && !strings.EqualFold(target, "_self") {
		return dom.Location{}, false
	}
	loc, err := cur.Resolve(href)
	if err != nil || loc.Origin != cur.Origin {
		return dom.Location{}, false
	}
	return loc, true
}
