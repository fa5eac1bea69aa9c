package kernel

// mailbox is a fixed ring of messages; head and tail wrap freely.
type mailbox struct {
	head  uint8
	tail  uint8
	slots [mailboxSlots]Message
}

func (mb *mailbox) len() int { return int(mb.head - mb.tail) }

func (mb *mailbox) push(msg Message) bool {
	if mb.len() >= mailboxSlots {
		return false
	}
	mb.slots[mb.head%mailboxSlots] = msg
	mb.head++
	return true
}

func (mb *mailbox) pop() (Message, bool) {
	if mb.len() == 0 {
		return Message{}, false
	}
	i := mb.tail % mailboxSlots
	msg := mb.slots[i]
	mb.slots[i] = Message{}
	mb.tail++
	return msg, true
}
