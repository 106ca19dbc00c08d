// Package tipbox styles the donation-goal widget used by streaming tip pages.
//
// A widget style is edited in one of two modes. In basic mode a StyleModel
// is the source of truth and the CSS text is always derived from it. In
// advanced mode the CSS text itself is authoritative and the model is left
// alone.
//
// # Generation
//
// Turn a style model into widget CSS:
//
//	styles := tipbox.DefaultStyleModel()
//	styles.BarBackground = "#123456"
//	css := tipbox.Generate(styles)
//
// # Sessions
//
// An editing session persists every change through a Storage:
//
//	session, err := tipbox.OpenSession(tipbox.NewMemoryStorage())
//	_ = session.SetStyleModel(styles)
//	_, _ = session.SwitchMode(tipbox.ModeAdvanced)
//	_ = session.SetCSSTextDirect("/* hand-authored */")
//
// # Revisions
//
// Named snapshots live in a bounded, newest-first RevisionStore:
//
//	store, err := tipbox.OpenRevisionStore(storage, tipbox.WithMaxRevisions(10))
//	rev := store.Create(session.CSSText(), &styles, "")
//
// # CLI Tool
//
// tipbox also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/tipbox/cmd/tipbox@latest
package tipbox
