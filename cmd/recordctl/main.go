// Command recordctl inspects, converts, and edits record files described by a
// YAML schema file.
package main

func main() {
	Execute()
}
