// +build linux darwin

// Client sends one datagram to a server socket. If --reply_socket is set it
// binds that path first and waits for the server's echo.
package main

import (
	"fmt"
	"os"

	"github.com/johnsiilver/dgram"
	"github.com/spf13/pflag"
)

var (
	socket = pflag.String("socket", "", "Path of the server's socket file. Required.")
	reply  = pflag.String("reply_socket", "", "If set, bind this path and wait for the server's echo.")
	msg    = pflag.String("msg", "hello", "Message to send.")
)

func main() {
	pflag.Parse()

	if *socket == "" {
		fmt.Println("did not pass --socket")
		os.Exit(1)
	}

	p := dgram.Unnamed
	if *reply != "" {
		p = *reply
	}

	sock, err := dgram.New(p)
	if err != nil {
		fmt.Println("error: ", err)
		os.Exit(1)
	}
	defer sock.Close()

	if err := sock.Send([]byte(*msg), *socket); err != nil {
		fmt.Println("error: ", err)
		os.Exit(1)
	}

	if *reply == "" {
		return
	}

	echo, err := sock.Receive()
	if err != nil {
		fmt.Println("error: ", err)
		os.Exit(1)
	}
	fmt.Printf("server echoed: %s\n", echo.Data)
}
