// Package services contains the domain services of the kitchen production
// core: stateless business logic that coordinates multiple aggregates without
// belonging to any single one.
//
// Services in this package:
//   - ContractGenerator: translates a confirmed commercial order into an
//     immutable production contract and derives the kitchen order from it
//   - StationAssigner: scores and proposes station assignments for pending
//     items, plus advisory workload-redistribution and cross-training passes
//   - ConsistencyValidator: a pure function family cross-checking kitchen
//     orders against their source order, recipes, inventory, and stations
//
// All services are side-effect free with respect to persistence and events:
// command handlers persist results and publish facts.
package services
