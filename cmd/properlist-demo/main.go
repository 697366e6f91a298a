// Command properlist-demo shows a long list with sticky section headers in
// the terminal.
package main

func main() {
	Execute()
}
