// Package mongostorage is the MongoDB implementation of twofactor.Storage.
// The credential is kept in the enhancedSecurity subdocument of each user
// ({token, period, enabled}) next to activity.last_updated; a version field
// guards every write.
package mongostorage
