// Package service provides application-level services for managing
// academic periods, careers, curricula, subjects, schedules, notes, and
// users. Services validate cross-entity references and business rules
// before delegating persistence to the store layer.
package service
