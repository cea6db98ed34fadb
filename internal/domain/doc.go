// Package domain contains the core business entities, value objects, and
// domain logic of the academic records system: academic periods, careers,
// curricula, subjects, schedules, notes, and users, together with the
// shared format parsers every service relies on. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
