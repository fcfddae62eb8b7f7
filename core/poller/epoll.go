//go:build linux

package poller

import "syscall"

// epollRDHUP lets us observe peer shutdown without a zero-length read.
const epollRDHUP = 0x2000

// EpollPoller is an epoll-based I/O multiplexer.
type EpollPoller struct {
	epfd   int
	events []syscall.EpollEvent
}

// NewPoller creates a new Poller (Linux).
func NewPoller() (Poller, error) {
	epfd, err := syscall.EpollCreate1(0)
	if err != nil {
		return nil, err
	}

	return &EpollPoller{
		epfd:   epfd,
		events: make([]syscall.EpollEvent, 1024),
	}, nil
}

// Add adds a file descriptor to the watch list. Level-triggered on
// purpose: a handler that leaves bytes unread gets woken again.
func (p *EpollPoller) Add(fd int) error {
	ev := syscall.EpollEvent{
		Events: uint32(syscall.EPOLLIN) | uint32(epollRDHUP),
		Fd:     int32(fd),
	}
	return syscall.EpollCtl(p.epfd, syscall.EPOLL_CTL_ADD, fd, &ev)
}

// Remove removes a file descriptor from the watch list.
func (p *EpollPoller) Remove(fd int) error {
	return syscall.EpollCtl(p.epfd, syscall.EPOLL_CTL_DEL, fd, nil)
}

// Wait waits up to timeout milliseconds for I/O events.
func (p *EpollPoller) Wait(timeout int) ([]int, error) {
	n, err := syscall.EpollWait(p.epfd, p.events, timeout)
	if err != nil && err != syscall.EINTR {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	fds := make([]int, 0, n)
	for i := 0; i < n; i++ {
		fds = append(fds, int(p.events[i].Fd))
	}
	return fds, nil
}

// Close closes the poller.
func (p *EpollPoller) Close() error {
	return syscall.Close(p.epfd)
}
