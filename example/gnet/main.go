// FILE: lixenwraith/unilog/example/gnet/main.go
package main

import (
	"github.com/lixenwraith/unilog"
	"github.com/lixenwraith/unilog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	log *unilog.Target
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	es.log.LogHexDump(unilog.SeverityDebug, buf, "echo "+c.RemoteAddr().String())
	c.Write(buf)
	return gnet.None
}

func main() {
	target, err := unilog.NewBuilder().
		Name("gnet").
		Directory("/var/log/gnet").
		Postfix(unilog.PostfixLogHour).
		KeepFiles(48).
		KeepUncompressed(4).
		Build()
	if err != nil {
		panic(err)
	}
	defer target.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(target)

	err = gnet.Run(
		&echoServer{log: target},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
