package feed

// Partition names one feed section. The four cursored partitions paginate
// independently; yourEvents and popular are recomputed in full per request.
type Partition string

const (
	PartitionYourEvents       Partition = "yourEvents"
	PartitionDiscover         Partition = "discover"
	PartitionOrganizations    Partition = "organizations"
	PartitionFriendsCreated   Partition = "friendsCreated"
	PartitionFriendsAttending Partition = "friendsAttending"
	PartitionPopular          Partition = "popular"
)

// CursoredPartitions lists the partitions that carry continuation cursors.
var CursoredPartitions = []Partition{
	PartitionDiscover,
	PartitionOrganizations,
	PartitionFriendsCreated,
	PartitionFriendsAttending,
}
