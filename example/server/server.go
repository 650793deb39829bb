// +build linux darwin

// Server binds a datagram Unix socket, logs every message it receives and
// echoes the payload back to any sender that has a socket of its own.
package main

import (
	"fmt"
	"os"

	"github.com/johnsiilver/dgram"
	"github.com/spf13/pflag"

	log "github.com/golang/glog"
)

var (
	socket = pflag.String("socket", "", "Path of the socket file to bind. Defaults to a random name in the tmp directory.")
)

func main() {
	pflag.Parse()

	p := *socket
	if p == "" {
		p = dgram.TempSocketPath()
	}

	sock, err := dgram.New(p, dgram.FileMode(0770))
	if err != nil {
		fmt.Println("error: ", err)
		os.Exit(1)
	}
	defer sock.Close()

	fmt.Println("listening on socket: ", sock.Path())

	for {
		msg, err := sock.Receive()
		if err != nil {
			log.Errorf("problem receiving a datagram: %s", err)
			continue
		}
		log.Infof("server: received %d bytes from %q", len(msg.Data), msg.Sender)

		if msg.Sender == "" {
			// Unnamed sender, nowhere to echo to.
			continue
		}
		if err := sock.Send(msg.Data, msg.Sender); err != nil {
			log.Errorf("problem echoing to %q: %s", msg.Sender, err)
		}
	}
}
