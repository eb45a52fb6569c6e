// Command arenactl plans, replays and inspects arenakit allocators.
package main

func main() {
	execute()
}
