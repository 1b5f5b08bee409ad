// meta/meta.go
package meta

import "time"

// ALPHA defines the learning rate of the Q-table update.
const ALPHA = 0.9

// GAMMA defines the discount applied to the next state's value.
const GAMMA = 0.95

// EPSILON defines the exploration probability. Zero keeps the agent greedy.
const EPSILON = 0.0

// EPISODES defines the number of self-play games played before a human joins.
const EPISODES = 10

// AGENT_DELAY defines the pause before the agent replies to a human move.
const AGENT_DELAY = 400 * time.Millisecond

// RECORDS_DIR defines where training records are written.
const RECORDS_DIR = "experiments"

// ENV_PREFIX prefixes every configuration environment variable.
const ENV_PREFIX = "TTT_"
