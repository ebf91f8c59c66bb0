package frame

// decorrelate reverses interchannel decorrelation in place for the two
// subframes of a stereo frame, per the frame's channel assignment (§4.5).
// Mono frames and independent-channel stereo need no adjustment.
func decorrelate(assignment ChannelAssignment, ch0, ch1 []int32) {
	switch assignment {
	case ChannelLeftSide:
		// ch0 = L, ch1 = S = L - R. Recover R.
		for i := range ch0 {
			ch1[i] = ch0[i] - ch1[i]
		}
	case ChannelSideRight:
		// ch0 = S = L - R, ch1 = R. Recover L.
		for i := range ch0 {
			ch0[i] = ch0[i] + ch1[i]
		}
	case ChannelMidSide:
		// ch0 = M = (L+R)>>1 (low bit folded into S), ch1 = S = L - R.
		for i := range ch0 {
			side := ch1[i]
			right := ch0[i] - (side >> 1)
			ch1[i] = right
			ch0[i] = right + side
		}
	}
}
