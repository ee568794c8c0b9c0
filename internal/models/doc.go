// package models defines the data model for the work-order sync service
package models
