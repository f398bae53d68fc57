package handler

// APIV1Prefix is the base path for the proxied backend API.
const APIV1Prefix = "/api/v1"
