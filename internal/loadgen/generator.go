package loadgen

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Technology pool used for generated profiles. Mixes weighted and
// unweighted labels so tech overlap scores spread across the range.
var techPool = []string{
	"JavaScript", "TypeScript", "Python", "React", "Flutter", "Node.js",
	"Docker", "Kubernetes", "AWS", "Go", "Rust", "Swift",
	"Django", "PostgreSQL", "Firebase", "Dart", "GraphQL", "Redis",
}

// Bio fragments combined into generated profile bios.
var bioOpeners = []string{
	"Full-stack developer passionate about open source.",
	"Backend engineer who enjoys distributed systems.",
	"Mobile developer looking for collaborators.",
	"Maintainer of several small libraries.",
	"Data engineer exploring new stacks.",
	"Systems programmer interested in performance work.",
}

// Stack size bounds for generated profiles.
const (
	minStackSize = 2
	maxStackSize = 6
)

// Activity stat bounds for generated profiles.
const (
	maxRepos         = 80
	maxFollowers     = 500
	maxContributions = 600
)

// Roughly one in ten generated profiles is a maintainer; one in eight has
// an empty bio so placeholder handling gets exercised under load.
const (
	maintainerOneIn = 10
	emptyBioOneIn   = 8
)

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateProfiles creates count synthetic developer profiles.
func generateProfiles(count int) []Profile {
	profiles := make([]Profile, count)
	for i := range profiles {
		stackSize := minStackSize + randInt(maxStackSize-minStackSize+1)
		stack := make([]string, 0, stackSize)
		seen := make(map[int]struct{}, stackSize)
		for len(stack) < stackSize {
			idx := randInt(len(techPool))
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			stack = append(stack, techPool[idx])
		}

		role := "contributor"
		if randInt(maintainerOneIn) == 0 {
			role = "maintainer"
		}
		bio := bioOpeners[randInt(len(bioOpeners))]
		if randInt(emptyBioOneIn) == 0 {
			bio = ""
		}

		id := uuid.NewString()
		profiles[i] = Profile{
			ID:        id,
			Name:      "Load User " + id[:8],
			Bio:       bio,
			TechStack: stack,
			Role:      role,
			Stats: &Stats64{
				PublicRepos:   randInt(maxRepos),
				Followers:     randInt(maxFollowers),
				Contributions: randInt(maxContributions),
			},
		}
	}
	return profiles
}

// generateSwipes creates count swipes between random distinct profiles.
// Roughly 60% of swipes are accepts so collaborative filtering has signal.
func generateSwipes(profiles []Profile, count int) []Swipe {
	swipes := make([]Swipe, count)
	for i := range swipes {
		actor := randInt(len(profiles))
		target := randInt(len(profiles))
		for target == actor {
			target = randInt(len(profiles))
		}
		direction := "accept"
		if randInt(5) >= 3 {
			direction = "reject"
		}
		swipes[i] = Swipe{
			EventID:   uuid.NewString(),
			SwiperID:  profiles[actor].ID,
			TargetID:  profiles[target].ID,
			Direction: direction,
		}
	}
	return swipes
}
