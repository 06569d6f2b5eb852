// Package sdk describes the Dart and Flutter SDK installations that tool
// environments run against.
package sdk

import (
	"github.com/glorpus-work/panakit/pkg/errors"
)

// Channel identifies an SDK release channel.
type Channel string

const (
	// ChannelStable is the stable SDK channel.
	ChannelStable Channel = "stable"
	// ChannelPreview is the preview (beta/dev) SDK channel.
	ChannelPreview Channel = "preview"
)

// Channels returns all supported channels in a fixed order.
func Channels() []Channel {
	return []Channel{ChannelStable, ChannelPreview}
}

// ParseChannel converts a string into a Channel.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelStable:
		return ChannelStable, nil
	case ChannelPreview:
		return ChannelPreview, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownChannel, "%q", s)
	}
}

// String returns the channel name.
func (c Channel) String() string {
	return string(c)
}
