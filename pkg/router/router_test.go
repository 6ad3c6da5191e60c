package router

import (
	"errors"
	"testing"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
	"github.com/vango-dev/sprig/pkg/loop"
)

type fixture struct {
	win    *memdom.Window
	loop   *loop.Loop
	router *Router
	events []*dom.Event
}

func newFixture(t *testing.T, start string) *fixture {
	t.Helper()
	win, err := memdom.NewWindow(nil, start)
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{win: win, loop: loop.New()}
	f.router = New(win, f.loop)
	win.AddEventListener("popstate", &dom.Listener{Handle: func(ev *dom.Event) error {
		f.events = append(f.events, ev)
		return nil
	}})
	t.Cleanup(f.router.Close)
	return f
}

func TestNavigateSamePathIsNoop(t *testing.T) {
	f := newFixture(t, "https://app.test/same?q=1#x")
	calls := 0
	f.router.OnNavigate(func(dom.Location) { calls++ })

	for _, target := range []string{"/same?q=1#x", "https://app.test/same?q=1#x", "?q=1#x"} {
		if err := f.router.Navigate(target); err != nil {
			t.Fatalf("Navigate(%q): %v", target, err)
		}
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}

	pushes, replaces := f.win.HistoryCalls()
	if pushes != 0 || replaces != 0 {
		t.Errorf("history calls = %d/%d, want none", pushes, replaces)
	}
	if len(f.events) != 0 || calls != 0 {
		t.Errorf("events=%d calls=%d, want none", len(f.events), calls)
	}
}

func TestNavigatePushesAndNotifiesAsynchronously(t *testing.T) {
	f := newFixture(t, "https://app.test/")
	var seen []dom.Location
	f.router.OnNavigate(func(loc dom.Location) {
		// The snapshot is already current when callbacks run.
		if got := f.router.Location(); got != loc {
			t.Errorf("Location() = %+v inside callback, want %+v", got, loc)
		}
		seen = append(seen, loc)
	})

	if err := f.router.Navigate("/next?page=2#top"); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 0 {
		t.Fatal("subscriber must not run synchronously")
	}
	if len(f.events) != 1 || f.events[0].Type != "popstate" {
		t.Fatalf("events = %v, want one popstate", f.events)
	}

	var later bool
	f.loop.Queue(func() error {
		later = true
		if len(seen) != 1 {
			t.Error("subscriber should run before work queued after Navigate")
		}
		return nil
	})
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}
	if !later || len(seen) != 1 {
		t.Fatalf("seen = %v", seen)
	}
	want := dom.Location{Origin: "https://app.test", Pathname: "/next", Search: "?page=2", Hash: "#top"}
	if seen[0] != want {
		t.Errorf("location = %+v, want %+v", seen[0], want)
	}
	if pushes, _ := f.win.HistoryCalls(); pushes != 1 {
		t.Errorf("pushes = %d, want 1", pushes)
	}
}

func TestNavigateReplace(t *testing.T) {
	f := newFixture(t, "https://app.test/a")
	if err := f.router.Navigate("/b", WithReplace(), WithState("s")); err != nil {
		t.Fatal(err)
	}
	pushes, replaces := f.win.HistoryCalls()
	if pushes != 0 || replaces != 1 {
		t.Errorf("history calls = %d/%d, want 0/1", pushes, replaces)
	}
	if f.win.HistoryLength() != 1 {
		t.Errorf("HistoryLength = %d, want 1", f.win.HistoryLength())
	}
	if len(f.events) != 1 || f.events[0].State != "s" {
		t.Errorf("events = %v", f.events)
	}
}

func TestNavigateFallsBackToGenericEvent(t *testing.T) {
	f := newFixture(t, "https://app.test/")
	f.win.PopStateUnsupported = true
	calls := 0
	f.router.OnNavigate(func(dom.Location) { calls++ })

	if err := f.router.Navigate("/fallback"); err != nil {
		t.Fatal(err)
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}
	if len(f.events) != 1 || f.events[0].Type != "popstate" {
		t.Errorf("events = %v, want one popstate", f.events)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscribersRunInOrderAndUnsubscribe(t *testing.T) {
	f := newFixture(t, "https://app.test/")
	var order []string
	f.router.OnNavigate(func(dom.Location) { order = append(order, "first") })
	stop := f.router.OnNavigate(func(dom.Location) { order = append(order, "second") })
	f.router.OnNavigate(func(dom.Location) { order = append(order, "third") })

	if err := f.router.Navigate("/one"); err != nil {
		t.Fatal(err)
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}
	stop()
	stop()
	if err := f.router.Navigate("/two"); err != nil {
		t.Fatal(err)
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "third", "first", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBackReachesSubscribers(t *testing.T) {
	f := newFixture(t, "https://app.test/start")
	var seen []string
	f.router.OnNavigate(func(loc dom.Location) { seen = append(seen, loc.Pathname) })

	if err := f.router.Navigate("/next"); err != nil {
		t.Fatal(err)
	}
	if err := f.router.Back(); err != nil {
		t.Fatal(err)
	}
	if got := f.router.Location().Pathname; got != "/start" {
		t.Errorf("Location after Back = %q", got)
	}
	if err := f.router.Forward(); err != nil {
		t.Fatal(err)
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}
	want := []string{"/next", "/start", "/next"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestNavigateErrors(t *testing.T) {
	f := newFixture(t, "https://app.test/")
	if err := f.router.Navigate("https://elsewhere.test/"); !errors.Is(err, ErrCrossOrigin) {
		t.Errorf("cross-origin err = %v", err)
	}
	if err := f.router.Navigate("http://[::1"); !errors.Is(err, dom.ErrInvalidURL) {
		t.Errorf("invalid url err = %v", err)
	}
	if len(f.events) != 0 {
		t.Error("failed navigation must not dispatch")
	}
}

func TestNilWindowIsNoop(t *testing.T) {
	r := New(nil, nil)
	calls := 0
	stop := r.OnNavigate(func(dom.Location) { calls++ })
	defer stop()

	if err := r.Navigate("/anything"); err != nil {
		t.Errorf("Navigate = %v", err)
	}
	if err := r.Back(); err != nil {
		t.Errorf("Back = %v", err)
	}
	ok, err := r.InterceptClick(dom.NewMouseEvent("click", 0), "/x", "", false)
	if ok || err != nil {
		t.Errorf("InterceptClick = %v, %v", ok, err)
	}
	if r.Location() != (dom.Location{}) {
		t.Errorf("Location = %+v", r.Location())
	}
	r.Close()
}

func TestPackageLevelFunctionsUseBoundRouter(t *testing.T) {
	if err := Navigate("/unbound"); err != nil {
		t.Errorf("unbound Navigate = %v", err)
	}
	OnNavigate(func(dom.Location) {})()

	f := newFixture(t, "https://app.test/")
	restore := Bind(f.router)
	defer restore()

	calls := 0
	stop := OnNavigate(func(dom.Location) { calls++ })
	defer stop()
	if err := Navigate("/bound"); err != nil {
		t.Fatal(err)
	}
	if err := f.loop.Drain(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || CurrentLocation().Pathname != "/bound" {
		t.Errorf("calls=%d location=%+v", calls, CurrentLocation())
	}
}
