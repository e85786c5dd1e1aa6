package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"rowdb/pkg/table"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var STARTUP = 100 * time.Millisecond
var MAX_DELAY int64 = 10

// Get delay jitter.
func jitter() time.Duration {
	return time.Duration(rand.Int63n(MAX_DELAY)+1) * time.Millisecond
}

// Parse workload
func parseWorkload(path string) ([]string, error) {
	// Open the file.
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	// Scan through all lines.
	var workload []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		workload = append(workload, scanner.Text())
	}
	return workload, scanner.Err()
}

// Handle workload
func handleWorkload(c chan string, workload []string, idx int, n int) error {
	for i := idx; i < len(workload); i += n {
		time.Sleep(jitter())
		c <- workload[i]
	}
	return nil
}

// Drive a table through its repl with a concurrent workload.
func main() {
	// Set up flags.
	var workloadFlag = flag.String("workload", "", "workload file (required)")
	var nFlag = flag.Int("n", 1, "number of threads to run (default: 1)")
	var verifyFlag = flag.Bool("verify", false, "enable to verify table state at the end of the workload")
	flag.Parse()

	// Open the table.
	t := table.New()
	defer t.Close()

	// Run REPL.
	r := table.TableRepl(t)
	c := make(chan string)
	go r.RunChan(c, uuid.New(), "")
	// Some time to wake up...
	time.Sleep(STARTUP)

	// Parse and run workload.
	if *workloadFlag == "" {
		fmt.Println("no workload file given")
		return
	}
	workload, err := parseWorkload(*workloadFlag)
	if err != nil {
		fmt.Println(err)
		return
	}
	var eg errgroup.Group
	for i := 0; i < *nFlag; i++ {
		idx := i
		eg.Go(func() error {
			return handleWorkload(c, workload, idx, *nFlag)
		})
	}
	if err := eg.Wait(); err != nil {
		fmt.Println(err)
		return
	}
	close(c)

	// Verify the state of the table.
	if *verifyFlag {
		if err := table.IsTable(t); err != nil {
			fmt.Println("verify failed:", err)
			return
		}
		fingerprint, err := table.Fingerprint(t)
		if err != nil {
			fmt.Println("verify failed:", err)
			return
		}
		fmt.Printf("verified %d rows, fingerprint %x\n", t.GetNumRows(), fingerprint)
	}
}
