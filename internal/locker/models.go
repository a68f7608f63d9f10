package locker

// Locker is the persistent locker record. The locker id is the device UUID
// supplied at creation and doubles as the primary key; ownerId is fixed at
// creation from the caller's identity and never changes afterwards.
type Locker struct {
	LockerID  string `json:"lockerId" bson:"_id"`
	OwnerID   string `json:"ownerId" bson:"ownerId"`
	UserName  string `json:"userName" bson:"userName"`
	Status    string `json:"status" bson:"status"`
	Location  string `json:"location" bson:"location"`
	Size      string `json:"size" bson:"size"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

// StatusAvailable is the status every locker starts with.
const StatusAvailable = "available"

// Patch carries the three mutable locker fields for an update. Nil means
// leave the field as it is; everything else on the record is immutable.
type Patch struct {
	Status   *string `json:"status"`
	Location *string `json:"location"`
	Size     *string `json:"size"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Location == nil && p.Size == nil
}
