// Package dtoverlay decides whether device-tree overlay sources apply to the
// running board.
//
// An overlay applies when the compatible property of its root node shares at
// least one string with the compatible list the firmware exposes for the
// board (by default /proc/device-tree/compatible). The package also extracts
// a one-line description from the overlay's leading comments.
//
// This is not a device-tree compiler. Sources are never turned into a tree:
// comments are stripped, the root node body is isolated, and child node
// bodies are dropped by brace depth. Only string-list properties are read.
//
// # Quick Check
//
//	ok, err := dtoverlay.IsCompatible("verdin-imx8mp_spidev_overlay.dts")
//	if err != nil {
//	    var re *dtoverlay.ReadError
//	    if errors.As(err, &re) {
//	        log.Fatalf("cannot read %s at %s: %v", re.Source, re.Path, re.Err)
//	    }
//	    log.Fatal(err)
//	}
//
// # Text Functions
//
// The text functions are pure and never fail:
//   - [StripComments] and [CommentText] split a source into code and comments
//   - [Description] picks the first comment line that is not license boilerplate
//   - [RootNodeText] keeps the depth-zero statements of the root node
//   - [CompatibleList] parses the root compatible property
//
// # Directory Listing
//
//	matches, err := dtoverlay.Scan("/boot/overlays-src", dtoverlay.WithExtensions(".dts"))
//	for _, m := range dtoverlay.Applicable(matches) {
//	    fmt.Println(m.Overlay.Path, m.Overlay.Description)
//	}
package dtoverlay
