// Package errors provides structured, actionable error messages for the
// sprig command line.
//
// Library packages return plain typed or wrapped errors. The CLI and the
// config loader convert them into coded errors that:
//   - Show the file location when one is known (e.g. a sprig.json syntax error)
//   - Explain what went wrong in plain language
//   - Suggest how to fix it
//
// # Error Codes
//
//   - E100-E119: vnode and runtime errors
//   - E120-E139: configuration errors
//   - E140-E159: CLI errors
//   - E160-E179: publish errors
//
// # Usage
//
//	err := errors.New("E122").
//	    WithLocation("sprig.json", 4, 13).
//	    WithSuggestion("Use a port between 1 and 65535")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E122: Invalid port
//	//
//	//   sprig.json:4:13
//	//
//	//     3 │   "server": {
//	//   → 4 │     "port": 70000
//	//       │             ^
//	//     5 │   }
//	//
//	//   Hint: Use a port between 1 and 65535
package errors
