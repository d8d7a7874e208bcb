package id_gen

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pwh_admin/be/biz/util/ip"

	"github.com/bytedance/gopkg/lang/fastrand"
)

var idgen = NewIDGenerator(10)

// NewID returns a request log id: unix millis, host ipv4, pid and a random tail.
func NewID() string {
	return idgen.NewID()
}

type IDGenerator struct {
	pool <-chan string
	stop chan struct{}
}

func NewIDGenerator(maxSize int) *IDGenerator {
	stop := make(chan struct{})
	return &IDGenerator{
		pool: newPool(maxSize, hostPart(), stop),
		stop: stop,
	}
}

func (g *IDGenerator) Stop() {
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
}

func (g *IDGenerator) NewID() string {
	return <-g.pool
}

func hostPart() string {
	return ip.IPv4Hex() + strconv.Itoa(os.Getpid())
}

func newPool(size int, host string, stop <-chan struct{}) <-chan string {
	pool := make(chan string, size)

	go func() {
		for {
			var sb strings.Builder
			sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
			sb.WriteString(host)
			sb.WriteString(strconv.FormatUint(fastrand.Uint64(), 36))

			select {
			case <-stop:
				return
			case pool <- sb.String():
			}
		}
	}()

	return pool
}
