package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"rowdb/pkg/config"
	"rowdb/pkg/pager"
	"rowdb/pkg/repl"
	"rowdb/pkg/table"

	"github.com/google/uuid"
)

// Default port 8335 (BEES).
const DEFAULT_PORT int = 8335

// Listens for SIGINT or SIGTERM and calls table.Close().
func setupCloseHandler(t *table.Table) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("closehandler invoked")
		t.Close()
		os.Exit(0)
	}()
}

// Start listening for connections at port `port`, running the repl on each
// connection. The table repl's coarse lock keeps concurrent clients safe.
func startServer(r *repl.REPL, prompt string, port int) {
	handleConn := func(c net.Conn) {
		clientId := uuid.New()
		defer c.Close()
		r.Run(clientId, prompt, c, c)
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%v", port))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%v server started listening on localhost:%v\n", config.DBName,
		listener.Addr().(*net.TCPAddr).Port)
	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Print(err)
			continue
		}
		go handleConn(conn)
	}
}

// Start the database.
func main() {
	// Set up flags.
	var promptFlag = flag.Bool("c", true, "use prompt?")
	var serverFlag = flag.Bool("server", false, "serve the repl over tcp instead of stdin")
	var portFlag = flag.Int("p", DEFAULT_PORT, "port number")
	flag.Parse()

	// Open the table.
	t := table.New()
	defer t.Close()
	setupCloseHandler(t)

	// Set up REPL resources.
	prompt := config.GetPrompt(*promptFlag)
	repls := []*repl.REPL{
		table.TableRepl(t),
		pager.PagerRepl(t.GetPager()),
	}
	r, err := repl.CombineRepls(repls)
	if err != nil {
		fmt.Println(err)
		return
	}

	// Serve over tcp if requested, else run the REPL here. Run returns on
	// .exit and the deferred Close tears the table down.
	if *serverFlag {
		startServer(r, prompt, *portFlag)
	} else {
		r.Run(uuid.New(), prompt, nil, nil)
	}
}
