// Command teveclub cares for a teveclub.hu pet from the terminal.
//
// Usage:
//
//	# full run: login, feed, learn, guess, logout
//	teveclub auto <username> <password>
//
//	# one action after logging in
//	teveclub action feed <username> <password>
//	teveclub action food --id 3 <username> <password>
//
//	# through a running bot server instead of calling the site directly
//	teveclub --server http://localhost:8000 auto <username> <password>
//
// The exit code is 1 when the run fails.
package main
