// Package errors provides structured, actionable diagnostics for the
// contract between a served page, its hydration payload and the easel
// runtime.
//
// The CLI checker surfaces violations of that contract as diagnostics
// that:
//   - Show the exact location in the checked file
//   - Explain what went wrong in plain language
//   - Suggest how to fix the page or payload
//
// # Error Categories
//
// Errors are organized into categories:
//   - hydration: payload errors (missing payload, malformed members)
//   - protocol: region marker errors (unbalanced, unnamed, duplicated)
//   - validation: cross-reference errors between payload members
//   - cli: input and scenario errors of the tooling itself
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to a short
// message and a detailed explanation.
//
// # Usage
//
//	err := errors.New("E020").
//	    WithLocation("page.html", 15, 0).
//	    WithSuggestion("Close the region with a <!--/av--> comment")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: Unclosed region marker
//	//
//	//   page.html:15
//	//
//	//     13 │ <section>
//	//     14 │   <!--av a:id=counter-->
//	//   → 15 │   <p>5</p>
//	//     16 │ </section>
//	//
//	//   An opening region comment has no matching /av comment among
//	//   its later siblings.
//	//
//	//   Hint: Close the region with a <!--/av--> comment
package errors
