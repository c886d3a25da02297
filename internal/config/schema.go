package config

var schema = `
{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "vaultasg config",
  "type": "object",
  "additionalProperties": false,
  "definitions": {
    "name": {"type": "string", "minLength": 1},
    "visibility": {"type": "string", "enum": ["public", "isolated"]},
    "subnet": {
      "type": "object",
      "additionalProperties": false,
      "required": ["name", "type"],
      "properties": {
        "name": {"$ref": "#/definitions/name"},
        "type": {"$ref": "#/definitions/visibility"},
        "mask": {"type": "integer"},
        "cidr": {"type": "string"}
      }
    },
    "capacity": {"type": "integer", "minimum": 0},
    "step": {
      "type": "object",
      "additionalProperties": false,
      "required": ["adjustment", "lower_bound"],
      "properties": {
        "adjustment": {"type": "integer"},
        "lower_bound": {"type": "number"}
      }
    },
    "strings": {
      "type": "array",
      "items": {"type": "string"}
    },
    "stringmap": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  },
  "properties": {
    "stack_name": {"$ref": "#/definitions/name"},
    "description": {"type": "string"},
    "environment": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "account": {"type": "string"},
        "region": {"type": "string"}
      }
    },
    "network": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "cidr": {"type": "string"},
        "max_azs": {"type": "integer", "minimum": 1},
        "subnets": {
          "type": "array",
          "items": {"$ref": "#/definitions/subnet"}
        }
      }
    },
    "compute": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "instance_type": {"type": "string"},
        "images": {"$ref": "#/definitions/stringmap"},
        "min_capacity": {"$ref": "#/definitions/capacity"},
        "desired_capacity": {"$ref": "#/definitions/capacity"},
        "max_capacity": {"$ref": "#/definitions/capacity"},
        "placement": {"$ref": "#/definitions/visibility"},
        "associate_public_ip": {"type": "boolean"}
      }
    },
    "role": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "principal": {"type": "string"},
        "managed_policies": {"$ref": "#/definitions/strings"}
      }
    },
    "scaling": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "adjustment_type": {"type": "string", "enum": ["exact-capacity", "change-in-capacity", "percent-change-in-capacity"]},
        "steps": {
          "type": "array",
          "items": {"$ref": "#/definitions/step"}
        }
      }
    },
    "tags": {"$ref": "#/definitions/stringmap"}
  }
}
`
